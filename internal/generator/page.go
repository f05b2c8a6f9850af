package generator

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
   <meta charset="UTF-8"/>
   <title>{{ .Title }}</title>
   <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
   <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
   <style>
      :root {
         --bg-color: #121212;
         --text-color: #e0e0e0;
         --card-bg: #1e1e1e;
         --card-border: #333;
         --summary-bg: #252525;
         --unavailable: #ffaa33;
      }
      body {
         font-family: Arial, sans-serif;
         max-width: 1200px;
         margin: 0 auto;
         padding: 20px;
         background-color: var(--bg-color);
         color: var(--text-color);
      }
      .menus {
         display: flex; flex-wrap: wrap; gap: 15px;
         background-color: var(--summary-bg);
         padding: 15px; border-radius: 5px;
      }
      .menus label { display: flex; flex-direction: column; font-size: 0.9em; }
      .menus select {
         margin-top: 5px; padding: 4px;
         background-color: var(--card-bg); color: var(--text-color);
         border: 1px solid var(--card-border); border-radius: 3px;
      }
      #forecast_info { margin: 10px 0; min-height: 1.2em; color: var(--unavailable); }
      #leaflet_map {
         height: 600px; width: 100%;
         border: 2px solid var(--card-border); border-radius: 5px;
      }
      #static_map img { max-width: 100%; border: 1px solid var(--card-border); margin-bottom: 10px; }
      #log_output { font-family: monospace; font-size: 0.8em; color: #888; }
   </style>
</head>
<body>
   <h1>{{ .Title }}</h1>
   {{ if .Intro }}<div class="intro">{{ .Intro }}</div>{{ end }}

   <div class="menus">
      <label>Map type
         <select id="map_type_select" onchange="drawMap()">
            {{ range .MapTypes }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Text }}</option>{{ end }}
         </select>
      </label>
      <label>Issue date
         <select id="issue_date_select" onchange="drawMap()">
            {{ range .IssueDates }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Text }}</option>{{ end }}
         </select>
      </label>
      <label>Species
         <select id="species_select" onchange="drawMap()">
            {{ range .Species }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Text }}</option>{{ end }}
         </select>
      </label>
      <label>Phenophase
         <select id="phenophase_select" onchange="drawMap()">
            {{ range .Phenophases }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Text }}</option>{{ end }}
         </select>
      </label>
   </div>

   <div id="forecast_info"></div>

   <div id="leaflet_map" style="display: none;"></div>
   <div id="static_map" style="display: block;">
      <img id="static_map_prediction" alt="Forecast prediction"/>
      <img id="static_map_uncertainty" alt="Forecast uncertainty"/>
   </div>

   <div id="log_output"></div>

   <script>
      const apiURL = {{ toJSON .APIURL }};
      const metadataURL = {{ toJSON .MetadataURL }};
      const imageBase = {{ toJSON .ImageBase }};
      const overlayBounds = {{ toJSON .Bounds }};
      const overlayOpacity = {{ toJSON .Opacity }};
      const debug = {{ toJSON .Debug }};
      const mapTypes = {{ toJSON .MapTypeValues }};
      const controls = ['map_type_select', 'issue_date_select', 'species_select', 'phenophase_select'];

      let map, overlayLayer = null, session = null, imageMetadata = null;
      const display = { map_type: 'static', leaflet_visible: false, static_visible: true };

      function logText(message) {
          if (debug) {
              document.getElementById('log_output').innerHTML += '<br>' + message;
          }
      }

      function getSelection(id) {
          const s = document.getElementById(id);
          if (s.selectedIndex < 0) return '';
          return s.options[s.selectedIndex].value;
      }

      function imageURL(issueDate, filename) {
          return imageBase.replace(/\/$/, '') + '/' + issueDate + '/' + filename;
      }

      // Mirrors the server resolver for pages hosted without it.
      // Returns null for an unknown map type and leaves the display as is.
      function resolveLocally(sel) {
          if (mapTypes.indexOf(sel.map_type_select) === -1) return null;
          const v = {};
          v.toggled = display.map_type !== sel.map_type_select;
          if (v.toggled) {
              display.map_type = sel.map_type_select;
              display.leaflet_visible = !display.leaflet_visible;
              display.static_visible = !display.static_visible;
          }
          v.map_type = display.map_type;
          v.leaflet_visible = display.leaflet_visible;
          v.static_visible = display.static_visible;
          const stem = sel.species_select + '_' + sel.phenophase_select + '_' + sel.issue_date_select;
          const images = imageMetadata ? imageMetadata.available_images : [];
          if (sel.map_type_select === 'interactive') {
              const filename = stem + '_map.png';
              v.clear_overlays = true;
              v.available = images.indexOf(filename) !== -1;
              v.overlay = { url: imageURL(sel.issue_date_select, filename), filename: filename, bounds: overlayBounds, opacity: overlayOpacity };
          } else {
              const prediction = stem + '_prediction.png';
              v.available = images.indexOf(prediction) !== -1;
              v.prediction_src = imageURL(sel.issue_date_select, prediction);
              v.uncertainty_src = imageURL(sel.issue_date_select, stem + '_uncertainty.png');
          }
          v.forecast_info = v.available ? '' : 'Forecast not available';
          return v;
      }

      function applyView(v) {
          document.getElementById('leaflet_map').style.display = v.leaflet_visible ? 'block' : 'none';
          document.getElementById('static_map').style.display = v.static_visible ? 'block' : 'none';
          if (v.leaflet_visible) map.invalidateSize();
          document.getElementById('forecast_info').textContent = v.forecast_info;
          if (v.clear_overlays && overlayLayer) {
              map.removeLayer(overlayLayer);
              overlayLayer = null;
          }
          if (v.overlay) {
              overlayLayer = L.imageOverlay(v.overlay.url, v.overlay.bounds, { opacity: v.overlay.opacity }).addTo(map);
              logText('setting overlay: ' + v.overlay.filename);
          }
          if (v.prediction_src) document.getElementById('static_map_prediction').src = v.prediction_src;
          if (v.uncertainty_src) document.getElementById('static_map_uncertainty').src = v.uncertainty_src;
      }

      async function drawMap() {
          const sel = {};
          const params = new URLSearchParams();
          controls.forEach(id => {
              sel[id] = getSelection(id);
              params.set(id, sel[id]);
          });
          logText('drawing map: ' + params.toString());

          if (!apiURL) {
              const v = resolveLocally(sel);
              if (!v) {
                  document.getElementById('forecast_info').textContent = 'unknown map type: ' + sel.map_type_select;
                  return;
              }
              applyView(v);
              return;
          }
          if (session) params.set('session', session);
          try {
              const resp = await fetch(apiURL + '?' + params.toString());
              if (!resp.ok) {
                  document.getElementById('forecast_info').textContent = (await resp.text()).trim();
                  return;
              }
              const body = await resp.json();
              session = body.session;
              applyView(body.view);
          } catch (err) {
              logText('resolve failed: ' + err);
          }
      }

      window.onload = async function() {
          map = L.map('leaflet_map').setView({{ toJSON .Center }}, {{ toJSON .Zoom }});
          L.tileLayer({{ toJSON .TileURL }}, {
              maxZoom: 19,
              attribution: '&copy; <a href="http://www.openstreetmap.org/copyright">OpenStreetMap</a>'
          }).addTo(map);

          if (!apiURL) {
              const resp = await fetch(metadataURL);
              imageMetadata = await resp.json();
          }
          drawMap();
      };
      {{ if .LiveReload }}
      (function() {
          const scheme = window.location.protocol === 'https:' ? 'wss://' : 'ws://';
          const socket = new WebSocket(scheme + window.location.host + '/ws');
          socket.onmessage = function(event) {
              if (event.data === 'reload') window.location.reload();
          };
      })();
      {{ end }}
   </script>
</body>
</html>
`
